// Package supercellswf handles the decoding, encoding, and in-memory
// manipulation of SupercellSWF (.sc) animation asset containers: a
// proprietary binary format that bundles sprite-sheet textures, vector
// shapes, text fields, animated clips, and transformation tables behind a
// short header and a stream of typed, length-prefixed tag records.
//
// A Document is the root of the in-memory structure. Its textures and
// transform banks are modeled directly; shapes, movie clips, text fields,
// and movie-clip modifiers are kept as opaque Resource records, since this
// package's job is the container codec, not those record schemas.
//
// Documents are decoded from and encoded to byte streams using the
// sub-package "codec", which implements the tag-stream reader/writer, the
// header/trailer protocol, and the external-texture file convention. Whole
// -file compression (LZMA, LZHAM, Zstandard, or none) and the pixel-matrix
// packing used by Texture are implemented in the "internal/compress" and
// "internal/pixel" sub-packages respectively.
package supercellswf
