package fru

// Sum adds the bytes modulo 256.
func Sum(data []byte) byte {
	var sum byte
	for _, b := range data {
		sum += b
	}

	return sum
}

// ZeroChecksum returns the byte that makes the sum of data plus itself zero modulo 256.
func ZeroChecksum(data []byte) byte {
	return ^Sum(data) + 1
}
