package contracts

import (
	"context"
	"time"
)

// AvatarStorage resolves stored staff avatar object names into URLs the
// presentation layer can embed directly.
type AvatarStorage interface {
	PresignAvatarURL(ctx context.Context, objectName string, expiry time.Duration) (string, error)
}
