package domain

// VendorCredential is a plaintext login record for a vendor account.
// Credentials are seeded once and compared by flat equality; hashing is
// a known open gap, kept for behavioral fidelity with the stored data.
type VendorCredential struct {
	Username string `json:"username"`
	Password string `json:"password"`
	VendorID string `json:"vendor_id"`
}
