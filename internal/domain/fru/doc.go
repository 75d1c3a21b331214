// Package fru encodes IPMI FRU information images.
//
// An image is an 8-byte common header followed by the optional internal-use,
// chassis, board and product areas, laid out back to back in that order.
// Every area is a multiple of 8 bytes long and, except for internal use,
// ends with a zero-sum checksum. Chassis, board and product areas carry a
// list of type/length fields packed as 6-bit ASCII and terminated by 0xC1.
//
// Builders read their values from a config.Store. Each builder resolves its
// field list once and derives both the area size and its contents from that
// list, so the two can never disagree.
package fru
