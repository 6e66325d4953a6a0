package engine

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"io"
	"math"

	"stratinv/perverse"
	"stratinv/stratification"
)

// fingerprint content-addresses a (graded object, stratification) pair by
// hashing a canonical encoding of both. Equal inputs always collide, which is
// what makes the memo arena safe: derived cycles are pure functions of the
// fingerprint.
func fingerprint(obj *perverse.GradedObject, strat *stratification.Stratification) string {
	h := sha256.New()

	writeInt(h, strat.AmbientDimension())
	for _, id := range strat.IDs() {
		st, _ := strat.Get(id)
		writeString(h, st.ID)
		writeInt(h, st.Dimension)
		writeInt(h, len(st.Closure))
		for _, ref := range st.Closure {
			writeString(h, ref)
		}
	}

	entries := obj.Entries()
	writeInt(h, len(entries))
	for _, e := range entries {
		writeInt(h, e.Degree)
		writeString(h, e.StratumID)
		writeInt(h, e.Rank)
		writeInt(h, len(e.Monodromy))
		for _, m := range e.Monodromy {
			writeUint64(h, math.Float64bits(m))
		}
	}

	return hex.EncodeToString(h.Sum(nil))
}

func writeInt(w io.Writer, v int) {
	writeUint64(w, uint64(int64(v)))
}

func writeUint64(w io.Writer, v uint64) {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], v)
	w.Write(buf[:])
}

func writeString(w io.Writer, s string) {
	writeInt(w, len(s))
	io.WriteString(w, s)
}
