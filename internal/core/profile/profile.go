package profile

import "context"

// Profile is the company fiscal data shown and edited on the profile page.
// Fiscal validation of the NIF is a backend concern; this core only carries
// the fields.
type Profile struct {
	RazonSocial     string `json:"razonSocial"`
	NIF             string `json:"nif"`
	DomicilioFiscal string `json:"domicilioFiscal"`
}

// Subscription is the backend-reported subscription state for the account.
type Subscription struct {
	Active bool   `json:"active"`
	Plan   string `json:"plan,omitempty"`
}

// Store is the port over the backend-owned profile data.
type Store interface {
	// Get returns the authenticated company's fiscal profile.
	Get(ctx context.Context) (*Profile, error)
	// Update replaces the fiscal profile.
	Update(ctx context.Context, p Profile) error
	// SubscriptionStatus returns the current subscription state.
	SubscriptionStatus(ctx context.Context) (*Subscription, error)
}
