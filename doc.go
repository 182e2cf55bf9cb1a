/*
Package rsync implements a reflective serialization framework whose core
value is schema-resilient deserialization: an archive produced by one
version of a program's data model can be decoded into a later (or earlier)
version whose structures were reorganized -- members renamed, reordered,
inserted, or removed -- and the framework still reconstructs as much state
as possible, rejecting only genuine incompatibilities.

We implement:

1. An ObjectGraph, an in-memory store mapping UIDs to reflective Objects,
each carrying a TypeDescriptor, version bounds, and (for non-primitives) an
ordered Member list.

2. A Reflector, the serialize-time component host code calls once per
field to populate an ObjectGraph from live memory.

3. A Codec, encoding an ObjectGraph to and from a self-describing,
length-prefixed ASCII byte stream (the "Srx1v" wire format).

4. A Syncer, the deserialize-time component that walks a destination graph
(freshly reflected from live memory) against a source graph (decoded from
bytes), matching members by name/type/offset/declaration order and writing
primitive values back into live memory, tolerating structural drift and
terminating correctly on cyclic object graphs.

# Technical Details

**UIDs.**
A UID is an opaque (id, size) pair identifying a datum. UIDs decoded from
bytes are never dereferenceable; only UIDs produced by a live Reflector
carry an addressable id, and only the Syncer's sync_primitive is permitted
to write through one. See LiveUID and WireUID.

**Wire format.**
Every value on the wire is a blob: a decimal length, a colon, and that many
payload bytes. Composite values are blobs whose payload is a concatenation
of further blobs. There are no tags, delimiters, or checksums -- nesting
and declared lengths are the only structure. See the doc comment on
encodeArchive for the full grammar.

**Cyclic graphs.**
The syncer breaks cycles destructively: sync_object removes its
destination Object from the destination graph before recursing into its
members, so any later traversal that reaches the same UID again finds an
already-erased (invalid) Object and returns immediately.

**Match cascade.**
Deserialization resilience comes entirely from match_member: name+type,
then type alone, then offset, then declaration-sequence index. Type
equality is never relaxed -- values are never coerced across primitive
widths.
*/
package rsync
