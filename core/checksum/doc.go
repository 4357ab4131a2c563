// Package checksum computes the content digests recorded in generation manifests.
//
// Digests are MD5 sums rendered as 32 lowercase hex characters. They identify content,
// they are not a security boundary: the manifest only needs to notice that a generated
// file changed since the last run.
//
// # Usage
//
//	sum := checksum.Bytes([]byte("hello"))
//	onDisk, err := checksum.File("/tmp/out/hello.txt")
package checksum
