package ports

import "context"

// PhotoStore keeps uploaded profile photos. References returned by Save are
// what the profile records and what Delete later accepts.
type PhotoStore interface {
	Save(ctx context.Context, name, contentType string, data []byte) (string, error)
	Delete(ctx context.Context, ref string) error
}

// PhotoJanitor removes replaced photos in the background. Discard never blocks
// the caller and never reports failure.
type PhotoJanitor interface {
	Discard(ref string)
}
