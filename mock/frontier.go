package mock

import (
	"context"

	"github.com/msousa/jango"
)

var _ jango.URLFrontier = (*URLFrontier)(nil)

// URLFrontier is a mock implementation of jango.URLFrontier.
type URLFrontier struct {
	PushFn func(link jango.DiscoveredLink) bool
	PopFn  func() (jango.DiscoveredLink, bool)
	LenFn  func() int
	SeenFn func(url string) bool
}

func (f *URLFrontier) Push(link jango.DiscoveredLink) bool {
	return f.PushFn(link)
}

func (f *URLFrontier) Pop() (jango.DiscoveredLink, bool) {
	return f.PopFn()
}

func (f *URLFrontier) Len() int {
	return f.LenFn()
}

func (f *URLFrontier) Seen(url string) bool {
	return f.SeenFn(url)
}

var _ jango.DomainLimiter = (*DomainLimiter)(nil)

// DomainLimiter is a mock implementation of jango.DomainLimiter.
type DomainLimiter struct {
	WaitFn func(ctx context.Context, domain string) error
}

func (d *DomainLimiter) Wait(ctx context.Context, domain string) error {
	return d.WaitFn(ctx, domain)
}
