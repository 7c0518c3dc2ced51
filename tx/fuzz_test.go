package tx

import (
	"bytes"
	"testing"
)

// FuzzScriptToAddressNoPanic ensures arbitrary scripts never panic.
func FuzzScriptToAddressNoPanic(f *testing.F) {
	f.Add([]byte{})
	f.Add([]byte{0x6a, 0x01, 0x00})
	f.Add([]byte{0x76, 0xa9, 0x14})
	f.Add(append([]byte{0x00, 0x14}, make([]byte, 20)...))

	f.Fuzz(func(t *testing.T, pkScript []byte) {
		ScriptToAddress(pkScript, regtest)
		EmbeddedData(pkScript)
	})
}

// FuzzDataScriptRoundTrip verifies DataScript followed by EmbeddedData
// returns the original payload.
func FuzzDataScriptRoundTrip(f *testing.F) {
	f.Add([]byte{0xfe, 0xed})
	f.Add([]byte("payment reference"))
	f.Add(make([]byte, StandardDataPayload+1))
	f.Add([]byte{})

	f.Fuzz(func(t *testing.T, payload []byte) {
		s, err := DataScript(payload)
		if err != nil {
			t.Fatal(err)
		}
		got, ok := EmbeddedData([]byte(*s))
		if !ok || !bytes.Equal(got, payload) {
			t.Fatalf("round trip: got %x, want %x", got, payload)
		}
	})
}
