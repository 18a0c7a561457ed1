// Command utxodemo walks the accumulator library through a minimal UTXO
// set rotation: accumulate a set of unspent outputs, derive a membership
// witness for each, spend all three in one batch, and accumulate their
// replacements — exactly the workflow stateless-blockchain's runtime
// (original_source/runtime/src/stateless.rs) drives the accumulator
// through on every block, minus consensus, networking, and storage.
//
// It owns no persistent state between runs and is not imported by any
// other package; it exists to demonstrate the call sequence, following
// the teacher's top-level main() demo-flow shape.
package main

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"
	"math/big"

	"github.com/wesolowski-labs/rsa-accumulator/accumulator"
	"github.com/wesolowski-labs/rsa-accumulator/modarith"
	"github.com/wesolowski-labs/rsa-accumulator/witnesses"
)

// UTXO mirrors accumulator-client::UTXO: an output identified by its
// owner's public key and an index, without the H256/wasm-bindgen
// specifics that belong to the original's Substrate/JS-FFI boundary.
type UTXO struct {
	PubKey [32]byte
	ID     uint64
}

// encode canonically serializes a UTXO as its public key followed by its
// little-endian 8-byte ID, the input HashUTXO feeds to hash_to_prime.
func (u UTXO) encode() []byte {
	buf := make([]byte, 32+8)
	copy(buf, u.PubKey[:])
	binary.LittleEndian.PutUint64(buf[32:], u.ID)
	return buf
}

// HashUTXO maps a UTXO to the accumulator prime that represents it.
func HashUTXO(u UTXO, lambda *big.Int) (*big.Int, error) {
	return modarith.HashToPrime(u.encode(), lambda)
}

func randomUTXO(id uint64) UTXO {
	var u UTXO
	u.ID = id
	if _, err := rand.Read(u.PubKey[:]); err != nil {
		panic(fmt.Sprintf("utxodemo: failed to sample key material: %v", err))
	}
	return u
}

func main() {
	// Seed-scenario parameters: generator g = 2, a small Lambda, and a
	// toy N wide enough to hold the product of several Lambda-bounded
	// UTXO primes (the PoE challenge fixed-width encodes every
	// component, including that product, at N's own byte width).
	// Production deployments pick N and Lambda via accumulator.Setup.
	params := accumulator.Params{
		N:         new(big.Int).SetUint64(18446744073709551557), // largest prime below 2^64
		Lambda:    new(big.Int).Lsh(big.NewInt(1), 16),
		LambdaPoE: new(big.Int).Lsh(big.NewInt(1), 80),
	}
	g := accumulator.Generator()

	spent := []UTXO{randomUTXO(0), randomUTXO(1), randomUTXO(2)}
	spentPrimes := make([]*big.Int, len(spent))
	for i, u := range spent {
		p, err := HashUTXO(u, params.Lambda)
		if err != nil {
			panic(err)
		}
		spentPrimes[i] = p
	}

	state, agg, _, err := accumulator.BatchAdd(g, spentPrimes, params)
	if err != nil {
		panic(err)
	}
	fmt.Printf("accumulated %d UTXOs, state = %s\n", len(spent), state)

	memWits := witnesses.CreateAllMemWit(g, spentPrimes, params.N)
	for i, w := range memWits {
		if !witnesses.VerifyMemWit(state, w, spentPrimes[i], params.N) {
			panic("utxodemo: derived witness failed to verify against accumulated state")
		}
	}

	replacements := []UTXO{randomUTXO(100), randomUTXO(101), randomUTXO(102)}
	replacementPrimes := make([]*big.Int, len(replacements))
	for i, u := range replacements {
		p, err := HashUTXO(u, params.Lambda)
		if err != nil {
			panic(err)
		}
		replacementPrimes[i] = p
	}

	deletions := make([]accumulator.BatchDeletion, len(spentPrimes))
	for i, p := range spentPrimes {
		deletions[i] = accumulator.BatchDeletion{X: p, W: memWits[i].W}
	}
	afterSpend, spentAgg, _, err := accumulator.BatchDelete(state, deletions, params)
	if err != nil {
		panic(err)
	}
	if spentAgg.Cmp(agg) != 0 {
		panic("utxodemo: spent aggregate does not match the original batch aggregate")
	}
	if afterSpend.Cmp(g) != 0 {
		panic("utxodemo: spending every output should restore the empty-set state")
	}

	finalState, newAgg, _, err := accumulator.BatchAdd(afterSpend, replacementPrimes, params)
	if err != nil {
		panic(err)
	}

	want := new(big.Int).Exp(g, newAgg, params.N)
	if finalState.Cmp(want) != 0 {
		panic("utxodemo: final state does not match the replacement outputs' product")
	}
	fmt.Printf("rotated ownership, final state = %s (matches g^(product of replacement primes))\n", finalState)
}
