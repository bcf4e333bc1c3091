package common

// WipeByteArray overwrites b with zeros. It is used to drop typed-in
// passwords from memory once the request carrying them has been sent.
// A nil slice is a no-op.
func WipeByteArray(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
