package codec

// ReadString reads length bytes as a bounded ASCII string. Trailing spaces
// are preserved; trimming them is a caller policy, since some
// formats (STANAG platform id) trim and others (KLV string fields) don't.
func ReadString(c *Cursor, length, max int) (string, error) {
	if length == 0 {
		return "", nil
	}

	b, err := c.ReadBytes(length, max)
	if err != nil {
		return "", err
	}

	return string(b), nil
}

// WriteString writes s as exactly length bytes, space-padding on the right
// if s is shorter and truncating if it is longer.
func WriteString(c *Cursor, s string, length, max int) error {
	buf := make([]byte, length)
	for i := range buf {
		buf[i] = ' '
	}
	copy(buf, s)

	return c.WriteBytes(buf, max)
}

// ReadBlob is a pass-through read of length raw bytes, used for fields whose
// format could not be determined or parsed.
func ReadBlob(c *Cursor, length, max int) ([]byte, error) {
	if length == 0 {
		return nil, nil
	}

	b, err := c.ReadBytes(length, max)
	if err != nil {
		return nil, err
	}

	out := make([]byte, len(b))
	copy(out, b)

	return out, nil
}

// WriteBlob writes p verbatim.
func WriteBlob(c *Cursor, p []byte, max int) error {
	return c.WriteBytes(p, max)
}
