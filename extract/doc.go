// Package extract turns raw pipeline content into plain text.
//
// A Registry maps every supported core.InputType to an Extractor. Extractors for
// literal inputs (text, email, digest) need nothing else; the rest depend on
// capabilities injected at construction:
//
//   - DocumentFetcher for PDF files and for web pages
//   - VideoSource for YouTube videos
//   - ai.Transcriber for audio recordings
//   - ItemDecoder for digest payloads (JSON arrays by default)
//
// Each extractor returns the text together with the metadata describing its
// source. Failures are reported as core.StageError values prefixed with the
// input type's label, for example "PDF extraction error: ...".
package extract
