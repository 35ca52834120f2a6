package index

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"
	"sort"

	"github.com/Player01osu/paper-engine/internal/intern"
)

// Snapshot format: a flat sequence of self-describing records with no
// top-level length prefix; the decoder consumes until the buffer is
// exhausted. All integers are little-endian.
//
//	0x01 global term  => 01 {len}x2 {count}x8 {text}
//	0x02 doc title    => 02 {len}x2 {text}
//	0x03 doc path     => 03 {len}x2 {text}
//	0x04 doc term     => 04 {len}x2 {freq f64}x8 {text}
//
// A 0x02 record finalizes any open document and opens a new one; 0x03/0x04
// apply to the open document. The byte layout is frozen: existing snapshot
// files must keep decoding across versions.
const (
	tagGlobalTerm byte = 0x01
	tagDocTitle   byte = 0x02
	tagDocPath    byte = 0x03
	tagDocTerm    byte = 0x04
)

// maxFieldLen is the largest string the 16-bit length field can carry.
const maxFieldLen = 1<<16 - 1

// record is one decoded snapshot record. Which fields are meaningful
// depends on the tag: count only for tagGlobalTerm, freq only for
// tagDocTerm.
type record struct {
	tag   byte
	text  string
	count uint64
	freq  float64
}

// Encode serializes the store as a snapshot. Global term records come
// first, then one title/path record pair per document followed by its term
// records. Terms and titles are written in sorted order so equal stores
// encode to equal bytes; decoders must not rely on this.
//
// Returns ErrFieldTooLong if any term, title, or path exceeds 65535 bytes.
func Encode(s *Store) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var buf bytes.Buffer

	globals := make([]string, 0, len(s.termCount))
	counts := make(map[string]uint64, len(s.termCount))
	for term, count := range s.termCount {
		text, err := s.pool.Resolve(term)
		if err != nil {
			return nil, fmt.Errorf("encode: %w", err)
		}
		globals = append(globals, text)
		counts[text] = count
	}
	sort.Strings(globals)
	for _, text := range globals {
		if err := appendRecord(&buf, record{tag: tagGlobalTerm, text: text, count: counts[text]}); err != nil {
			return nil, err
		}
	}

	titles := make([]string, 0, len(s.documents))
	for title := range s.documents {
		titles = append(titles, title)
	}
	sort.Strings(titles)
	for _, title := range titles {
		doc := s.documents[title]
		if err := appendRecord(&buf, record{tag: tagDocTitle, text: doc.Title}); err != nil {
			return nil, err
		}
		if err := appendRecord(&buf, record{tag: tagDocPath, text: doc.Path}); err != nil {
			return nil, err
		}
		terms := make([]string, 0, len(doc.TermFreq))
		freqs := make(map[string]float64, len(doc.TermFreq))
		for term, freq := range doc.TermFreq {
			text, err := s.pool.Resolve(term)
			if err != nil {
				return nil, fmt.Errorf("encode %q: %w", doc.Title, err)
			}
			terms = append(terms, text)
			freqs[text] = freq
		}
		sort.Strings(terms)
		for _, text := range terms {
			if err := appendRecord(&buf, record{tag: tagDocTerm, text: text, freq: freqs[text]}); err != nil {
				return nil, err
			}
		}
	}
	return buf.Bytes(), nil
}

func appendRecord(buf *bytes.Buffer, rec record) error {
	if len(rec.text) > maxFieldLen {
		return fmt.Errorf("encode: %d-byte string: %w", len(rec.text), ErrFieldTooLong)
	}
	buf.WriteByte(rec.tag)
	var length [2]byte
	binary.LittleEndian.PutUint16(length[:], uint16(len(rec.text)))
	buf.Write(length[:])
	switch rec.tag {
	case tagGlobalTerm:
		var count [8]byte
		binary.LittleEndian.PutUint64(count[:], rec.count)
		buf.Write(count[:])
	case tagDocTerm:
		var freq [8]byte
		binary.LittleEndian.PutUint64(freq[:], math.Float64bits(rec.freq))
		buf.Write(freq[:])
	}
	buf.WriteString(rec.text)
	return nil
}

// Decode rebuilds a store from snapshot bytes, interning every term and
// title text through pool. An empty input yields an empty store. Any decode
// failure aborts the whole load: no partial store is returned.
//
// The document open at end-of-stream is finalized into the store; earlier
// versions of the format writer never emitted a trailing marker, and
// decoders that waited for one dropped the last document.
func Decode(b []byte, pool *intern.Pool) (*Store, error) {
	store := NewStore(pool)
	r := &snapshotReader{buf: b}
	var open *Document
	for !r.done() {
		offset := r.off
		rec, err := r.readRecord()
		if err != nil {
			return nil, fmt.Errorf("decode at offset %d: %w", offset, err)
		}
		switch rec.tag {
		case tagGlobalTerm:
			store.termCount[pool.Intern(rec.text)] = rec.count
		case tagDocTitle:
			if open != nil {
				store.documents[open.Title] = open
			}
			open = &Document{
				Title:    rec.text,
				TermFreq: make(map[intern.Term]float64),
			}
		case tagDocPath:
			if open == nil {
				return nil, fmt.Errorf("decode at offset %d: path record before any title: %w",
					offset, ErrCorruptedStream)
			}
			open.Path = rec.text
		case tagDocTerm:
			if open == nil {
				return nil, fmt.Errorf("decode at offset %d: term record before any title: %w",
					offset, ErrCorruptedStream)
			}
			open.TermFreq[pool.Intern(rec.text)] = rec.freq
		}
	}
	if open != nil {
		store.documents[open.Title] = open
	}
	return store, nil
}

// snapshotReader walks the snapshot buffer one field at a time so record
// parsing never does offset arithmetic at the call sites.
type snapshotReader struct {
	buf []byte
	off int
}

func (r *snapshotReader) done() bool { return r.off >= len(r.buf) }

func (r *snapshotReader) readRecord() (record, error) {
	tag, err := r.readByte()
	if err != nil {
		return record{}, err
	}
	rec := record{tag: tag}
	switch tag {
	case tagGlobalTerm:
		length, err := r.readUint16()
		if err != nil {
			return record{}, err
		}
		if rec.count, err = r.readUint64(); err != nil {
			return record{}, err
		}
		if rec.text, err = r.readString(int(length)); err != nil {
			return record{}, err
		}
	case tagDocTitle, tagDocPath:
		length, err := r.readUint16()
		if err != nil {
			return record{}, err
		}
		if rec.text, err = r.readString(int(length)); err != nil {
			return record{}, err
		}
	case tagDocTerm:
		length, err := r.readUint16()
		if err != nil {
			return record{}, err
		}
		bits, err := r.readUint64()
		if err != nil {
			return record{}, err
		}
		rec.freq = math.Float64frombits(bits)
		if rec.text, err = r.readString(int(length)); err != nil {
			return record{}, err
		}
	default:
		return record{}, fmt.Errorf("tag 0x%02x: %w", tag, ErrUnknownRecordTag)
	}
	return rec, nil
}

func (r *snapshotReader) readByte() (byte, error) {
	if r.off+1 > len(r.buf) {
		return 0, fmt.Errorf("truncated record: %w", ErrCorruptedStream)
	}
	b := r.buf[r.off]
	r.off++
	return b, nil
}

func (r *snapshotReader) readUint16() (uint16, error) {
	if r.off+2 > len(r.buf) {
		return 0, fmt.Errorf("truncated record: %w", ErrCorruptedStream)
	}
	v := binary.LittleEndian.Uint16(r.buf[r.off:])
	r.off += 2
	return v, nil
}

func (r *snapshotReader) readUint64() (uint64, error) {
	if r.off+8 > len(r.buf) {
		return 0, fmt.Errorf("truncated record: %w", ErrCorruptedStream)
	}
	v := binary.LittleEndian.Uint64(r.buf[r.off:])
	r.off += 8
	return v, nil
}

func (r *snapshotReader) readString(n int) (string, error) {
	if r.off+n > len(r.buf) {
		return "", fmt.Errorf("truncated record: %w", ErrCorruptedStream)
	}
	s := string(r.buf[r.off : r.off+n])
	r.off += n
	return s, nil
}
