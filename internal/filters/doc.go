// Package filters implements the PDF stream decode filters needed to
// read real-world documents: FlateDecode (with the PNG and TIFF
// predictors), ASCIIHexDecode, ASCII85Decode, RunLengthDecode and
// CCITTFaxDecode.
//
// Filters operate on raw bytes; translating a stream dictionary's
// /DecodeParms entries into a [Params] value is the caller's job.
package filters
