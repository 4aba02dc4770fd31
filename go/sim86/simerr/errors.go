// Package simerr defines the five error kinds of the 8086 decoder and
// simulator, built on the same typed-sentinel-error pattern this lineage
// already uses for ROM extraction, plus positional wrapping for decode
// failures.
package simerr

import (
	"fmt"

	lvlerrors "github.com/btcsuite/goleveldb/leveldb/errors"
	"github.com/pkg/errors"
)

// Kind classifies a simulator error per SPEC_FULL.md §7.
type Kind int

const (
	// KindUnrecognizedOpcode: first byte matches no family predicate.
	KindUnrecognizedOpcode Kind = iota
	// KindInvalidOperandShape: executor received an illegal operand pair.
	KindInvalidOperandShape
	// KindUnimplementedSemantic: a predicate or op the executor doesn't model.
	KindUnimplementedSemantic
	// KindOutOfRangeMemory: a memory access past the 1 MiB array.
	KindOutOfRangeMemory
	// KindCursorExhausted: input ended mid-instruction.
	KindCursorExhausted
)

var kindNames = [...]string{
	"unrecognized opcode",
	"invalid operand shape",
	"unimplemented semantic",
	"out-of-range memory access",
	"cursor exhaustion",
}

func (k Kind) String() string {
	if int(k) < 0 || int(k) >= len(kindNames) {
		return "unknown"
	}
	return kindNames[k]
}

// Fatal reports whether an error of this kind must abort the driver loop
// (kinds 1, 4, 5) rather than being recovered locally (kinds 2, 3).
func (k Kind) Fatal() bool {
	switch k {
	case KindInvalidOperandShape, KindUnimplementedSemantic:
		return false
	default:
		return true
	}
}

// SimError is a sentinel error tagged with its Kind, built on
// goleveldb/leveldb/errors.New the way this lineage's ROM dumper tags
// ErrorInvalidHeader/ErrorInvalidROM.
type SimError struct {
	kind Kind
	err  error
}

func (e *SimError) Error() string { return e.err.Error() }

// Kind returns the error's classification.
func (e *SimError) Kind() Kind { return e.kind }

// Unwrap exposes the wrapped sentinel for errors.Is/As and pkg/errors.Cause.
func (e *SimError) Unwrap() error { return e.err }

func newKind(kind Kind, format string, args ...interface{}) *SimError {
	msg := fmt.Sprintf(format, args...)
	return &SimError{kind: kind, err: lvlerrors.New(msg)}
}

// UnrecognizedOpcode reports a first byte that matched no decoder family,
// naming its binary representation.
func UnrecognizedOpcode(b byte) *SimError {
	return newKind(KindUnrecognizedOpcode, "unrecognized opcode %08b at no known family", b)
}

// InvalidOperandShape reports an illegal dst/src operand-kind pairing for
// a mnemonic, e.g. memory <- memory.
func InvalidOperandShape(mnemonic string, dstKind, srcKind string) *SimError {
	return newKind(KindInvalidOperandShape, "%s: illegal operand shape %s <- %s", mnemonic, dstKind, srcKind)
}

// UnimplementedSemantic reports a mnemonic or predicate the executor does
// not (yet) model.
func UnimplementedSemantic(mnemonic string) *SimError {
	return newKind(KindUnimplementedSemantic, "%s is unimplemented", mnemonic)
}

// OutOfRangeMemory reports an access past the 1 MiB memory array.
func OutOfRangeMemory(addr int) *SimError {
	return newKind(KindOutOfRangeMemory, "memory access out of range at 0x%x", addr)
}

// CursorExhausted reports input ending mid-instruction.
func CursorExhausted(offset int) *SimError {
	return newKind(KindCursorExhausted, "cursor exhausted mid-instruction at offset %d", offset)
}

// WithOffset wraps err with the byte offset at which it occurred,
// preserving the original SimError for Kind()/errors.As.
func WithOffset(err error, offset int) error {
	return errors.Wrapf(err, "at offset %d", offset)
}
