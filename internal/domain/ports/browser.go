package ports

import "context"

// BrowserLauncher opens a URL in the user's browser
type BrowserLauncher interface {
	Open(ctx context.Context, url string) error
}
