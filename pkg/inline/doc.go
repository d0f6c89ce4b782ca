// Package inline converts a single line of emphasis/link markup into plain
// text plus style and link ranges, and reconstructs markup from that triple.
//
// Recognized markers: **bold**, _italic_, ~~strikethrough~~ and
// [label](href). Markers do not nest. A backslash escapes any of
// \ * _ ~ [ ] ( ) # > - so that literal marker characters survive a round trip.
package inline
