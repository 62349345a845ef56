// Package parserpool provides a pool of gnparser instances for concurrent
// name parsing. This is a pure package - parsing is computation, not I/O.
//
// Fish names follow the zoological code, so all parsers of the pool are
// configured with nomcode.Zoological.
package parserpool

import (
	"runtime"

	"github.com/gnames/gnlib/ent/nomcode"
	"github.com/gnames/gnparser"
	"github.com/gnames/gnparser/ent/parsed"
)

// Pool provides a pool of gnparser instances for concurrent parsing.
type Pool interface {
	// Parse parses a scientific name string. It retrieves a parser from the
	// pool, parses the name, and returns the parser to the pool. This method
	// is safe for concurrent use.
	Parse(nameString string) parsed.Parsed

	// Canonical returns the simple canonical form of a name (without
	// authorship, ranks or hybrid signs). The ok value is false if the name
	// could not be parsed.
	Canonical(nameString string) (canonical string, ok bool)

	// Close shuts down the parser pool and releases resources.
	// After calling Close, the pool should not be used.
	Close()
}

// PoolImpl implements the Pool interface using gnparser.NewPool.
type PoolImpl struct {
	ch       chan gnparser.GNparser
	poolSize int
}

// NewPool creates a new parser pool with the specified number of workers.
// If jobsNum is 0, it defaults to runtime.NumCPU().
func NewPool(jobsNum int) Pool {
	poolSize := jobsNum
	if poolSize <= 0 {
		poolSize = runtime.NumCPU()
	}

	cfg := gnparser.NewConfig(
		gnparser.OptCode(nomcode.Zoological),
	)
	ch := gnparser.NewPool(cfg, poolSize)

	return &PoolImpl{
		ch:       ch,
		poolSize: poolSize,
	}
}

// Parse parses a scientific name string with a parser from the pool.
func (p *PoolImpl) Parse(nameString string) parsed.Parsed {
	// blocks if all parsers are busy
	parser := <-p.ch
	result := parser.ParseName(nameString)
	p.ch <- parser

	return result
}

// Canonical returns the simple canonical form of a parsed name.
func (p *PoolImpl) Canonical(nameString string) (string, bool) {
	res := p.Parse(nameString)
	if !res.Parsed || res.Canonical == nil || res.Canonical.Simple == "" {
		return "", false
	}
	return res.Canonical.Simple, true
}

// Close shuts down the parser pool and drains remaining parsers.
func (p *PoolImpl) Close() {
	if p.ch != nil {
		close(p.ch)
		for range p.ch {
		}
	}
}
