// Package sdt extracts service metadata from stream analyzer output.
//
// An analyzer report is a line-oriented dump of the PAT, PMT and SDT tables of
// a transport stream. Two line shapes carry service names:
//
//	INFO: SDT: pnr: 801 service_type: 1 service_name: КИНОТВ
//	SDT    service:Shopping Live
//
// The first ties a name to a program number. The second is a bare service
// descriptor; its name is reported without a program number and also becomes
// the report's fallback name. Everything else is ignored, and malformed input
// yields empty results rather than errors.
//
// ExtractPNR reads the program number that stream URLs carry in their
// fragment, as in udp://239.0.0.1:1234#pnr=1106&cam=ntv.
//
// All functions are pure and safe for concurrent use.
package sdt
