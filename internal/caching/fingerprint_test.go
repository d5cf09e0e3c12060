package caching

import (
	"testing"

	"navhub/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestFingerprint_OrderIndependent(t *testing.T) {
	a := Fingerprint(models.NewPermissionSet("invoices.view", "admin.audit.view", "menus.manage"))
	b := Fingerprint(models.NewPermissionSet("menus.manage", "invoices.view", "admin.audit.view"))

	assert.Equal(t, a, b)
}

func TestFingerprint_DeduplicatesCodes(t *testing.T) {
	a := Fingerprint(models.NewPermissionSet("invoices.view", "invoices.view"))
	b := Fingerprint(models.NewPermissionSet("invoices.view"))

	assert.Equal(t, a, b)
}

func TestFingerprint_EmptySetIsStable(t *testing.T) {
	// A principal with no grants is a legitimate cacheable identity, not an
	// error state. Nil and empty sets must land on the same key.
	empty := Fingerprint(models.NewPermissionSet())
	var nilSet models.PermissionSet

	assert.NotEmpty(t, empty)
	assert.Equal(t, empty, Fingerprint(nilSet))
	assert.NotEqual(t, empty, Fingerprint(models.NewPermissionSet("invoices.view")))
}

func TestFingerprint_DistinctSetsDistinctKeys(t *testing.T) {
	a := Fingerprint(models.NewPermissionSet("invoices.view"))
	b := Fingerprint(models.NewPermissionSet("payments.verify"))

	assert.NotEqual(t, a, b)
}

func TestFingerprint_ConcatenationCannotCollide(t *testing.T) {
	// The separator byte keeps {"ab","c"} and {"a","bc"} apart.
	a := Fingerprint(models.NewPermissionSet("ab", "c"))
	b := Fingerprint(models.NewPermissionSet("a", "bc"))

	assert.NotEqual(t, a, b)
}

func TestFingerprint_CaseSensitive(t *testing.T) {
	a := Fingerprint(models.NewPermissionSet("Invoices.View"))
	b := Fingerprint(models.NewPermissionSet("invoices.view"))

	assert.NotEqual(t, a, b)
}
