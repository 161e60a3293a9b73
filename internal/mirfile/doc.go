// Package mirfile reads and writes MIR modules.
//
// Two encodings exist. The TOML form is written by hand: every [[func]]
// table declares its slots and lists its blocks, and operands are short
// strings such as "arg0", "int 5" or "fn fact". The binary form is the
// msgpack encoding of a mir.Module behind a schema header and is what
// "mirvm compile" produces.
package mirfile
