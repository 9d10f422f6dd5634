// Package wave parses the "Account Transactions" CSV export into a
// validated document. Parsing is fail-fast: the first malformed cell,
// schema mismatch, or broken balance invariant aborts the whole parse
// with a position-carrying error, and no partial document is returned.
package wave

import (
	"bytes"
)

// Document is a fully parsed and validated export.
type Document struct {
	Header   *Header
	Accounts []*AccountBlock
}

var utf8BOM = []byte{0xef, 0xbb, 0xbf}

// Parse parses a complete export. Account blocks follow the header,
// separated by rows holding a single empty cell; a trailing separator
// is allowed, anything else after the last block is an error.
func Parse(source []byte) (*Document, error) {
	source = bytes.TrimPrefix(source, utf8BOM)
	s := NewScanner(source)

	header, err := parseHeader(s)
	if err != nil {
		return nil, err
	}

	var accounts []*AccountBlock
	for !s.EOF() {
		if len(accounts) > 0 {
			if err := emptyCell(s); err != nil {
				return nil, err
			}
			if err := s.RowEnd(); err != nil {
				return nil, err
			}
			if s.EOF() {
				break
			}
		}
		account, err := parseAccount(s, header.Schema)
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, account)
	}

	return &Document{Header: header, Accounts: accounts}, nil
}

// Account returns the block with the given name, or nil.
func (d *Document) Account(name string) *AccountBlock {
	for _, a := range d.Accounts {
		if a.Name == name {
			return a
		}
	}
	return nil
}
