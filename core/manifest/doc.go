// Package manifest reads and writes the checksum manifest stored next to generated files.
//
// A manifest records, for every file produced by the last successful run, its relative
// path and content digest. The reconciliation engine compares three manifests (desired,
// saved and on-disk) to decide what to write, what to delete and what was edited by hand.
//
// # File Format
//
// The manifest is plain UTF-8 text, one entry per line:
//
//	<relative/path>,<32 lowercase hex md5>
//
// Entries are sorted by path in byte order and joined by a single "\n" with no trailing
// newline. The default file name is ".generated-files"; generators that partition their
// output by actor use ".generated-files-<actor>" so each actor keeps an independent record.
//
// # Usage
//
//	m := manifest.New([]manifest.Entry{{Path: "a/x.txt", Checksum: sum}})
//	if err := manifest.Write(dir, manifest.FileName, m); err != nil {
//	    return err
//	}
//	saved, err := manifest.Read(dir, manifest.FileName)
package manifest
