package cas

import (
	"fmt"
	"sync/atomic"

	"github.com/dgryski/go-farm"
	"github.com/rs/zerolog/log"

	"github.com/brewin-lang/brewin/ast"
)

// ParseFunc turns source text into a generic program tree.
type ParseFunc func(src string) (*ast.Node, error)

// ParseCache memoizes parsing by source text. The dialect string separates
// grammars that would parse the same text differently.
type ParseCache struct {
	store  CAS
	hits   atomic.Int64
	misses atomic.Int64
}

func NewParseCache(store CAS) *ParseCache {
	return &ParseCache{store: store}
}

// SourceHash is the ref name a source text is cached under.
func SourceHash(dialect, src string) Hash {
	return Hash(farm.Hash64([]byte(dialect + "\x00" + src)))
}

// Load returns the tree for src, calling parse only on a cache miss.
// Parse errors are returned as is and never cached.
func (p *ParseCache) Load(dialect, src string, parse ParseFunc) (*ast.Node, error) {
	key := SourceHash(dialect, src)
	target, ok, err := p.store.GetRef(key)
	if err != nil {
		return nil, fmt.Errorf("looking up source ref: %w", err)
	}
	if ok {
		n, err := Retrieve[*ast.Node](p.store, target)
		if err == nil {
			p.hits.Add(1)
			log.Debug().Str("source", key.String()).Str("program", target.String()).Msg("Parse cache hit")
			return n, nil
		}
		log.Warn().Err(err).Str("source", key.String()).Msg("Cached program unreadable, reparsing")
	}

	p.misses.Add(1)
	n, err := parse(src)
	if err != nil {
		return nil, err
	}
	h, err := p.store.Put(n)
	if err != nil {
		return nil, fmt.Errorf("storing parsed program: %w", err)
	}
	if err := p.store.SetRef(key, h); err != nil {
		return nil, err
	}
	log.Debug().Str("source", key.String()).Str("program", h.String()).Msg("Parse cache store")
	return n, nil
}

func (p *ParseCache) Stats() (hits, misses int64) {
	return p.hits.Load(), p.misses.Load()
}
