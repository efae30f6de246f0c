package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/zragie/ngo-receipts-api/pkg/receiptno"
)

func TestOrganizationPrefixFallsBackToDefault(t *testing.T) {
	assert.Equal(t, receiptno.DefaultPrefix, (&Organization{}).Prefix())
	assert.Equal(t, "HH-", (&Organization{ReceiptPrefix: "HH-"}).Prefix())
}
