// Package csvimport turns CSV documents into alarm records.
//
// Parsing happens in three steps: Parse splits text into rows of fields,
// RecordsFromRows maps rows onto the header names and ToAlarms interprets
// the named columns. Import chains the steps and enforces the file type and
// "no data" rules; Template and Encode produce documents in the same layout.
package csvimport
