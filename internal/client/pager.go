package client

import "context"

// containerLister is the single call the pager needs.
type containerLister interface {
	ContainerList(ctx context.Context, account string, opts ListOptions) ([]ContainerEntry, error)
}

// A ContainerPager iterates the container listing of an account. Pages are
// fetched lazily, each one only once the previous page has been consumed.
// In full mode the pager chains pages by reusing the last seen name as the
// next marker until an empty page comes back; otherwise it stops after one
// page. A pager is single use: once Next returned false it stays exhausted.
type ContainerPager struct {
	ctx     context.Context
	lister  containerLister
	account string
	opts    ListOptions
	full    bool

	page    []ContainerEntry
	index   int
	started bool
	done    bool
	err     error
}

// NewContainerPager returns a pager over the containers of account matching
// opts. With full, the listing spans remote pages until exhaustion.
func NewContainerPager(ctx context.Context, lister containerLister, account string, opts ListOptions, full bool) *ContainerPager {
	return &ContainerPager{
		ctx:     ctx,
		lister:  lister,
		account: account,
		opts:    opts,
		full:    full,
	}
}

// Next advances the pager, fetching the next remote page when needed. It
// returns false at the end of the listing or on error.
func (p *ContainerPager) Next() bool {
	if p.err != nil || (p.done && p.index+1 >= len(p.page)) {
		return false
	}
	if p.started && p.index+1 < len(p.page) {
		p.index++
		return true
	}

	if p.started {
		if !p.full || len(p.page) == 0 {
			p.done = true
			return false
		}
		p.opts.Marker = p.page[len(p.page)-1].Name
	}

	page, err := p.lister.ContainerList(p.ctx, p.account, p.opts)
	if err != nil {
		p.err = err
		p.done = true
		return false
	}
	p.started = true
	p.page = page
	p.index = 0

	if len(page) == 0 {
		p.done = true
		return false
	}
	if !p.full {
		p.done = true
	}
	return true
}

// Entry returns the current entry. Only valid after Next returned true.
func (p *ContainerPager) Entry() ContainerEntry {
	return p.page[p.index]
}

// Err returns the first error hit while paging.
func (p *ContainerPager) Err() error {
	return p.err
}
