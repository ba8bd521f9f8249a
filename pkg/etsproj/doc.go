// Package etsproj parses ETS project archives (.knxproj) into a project.Project.
//
// A build reads the documents of an extracted archive in a fixed order, each
// one streamed element by element into a builder.Builder that appends into a
// shared project:
//
//  1. P-*/project.xml: project information (optional)
//  2. P-*/0.xml: topology, building forest and group address forest; the
//     topology addresses are normalized afterwards
//  3. M-*/Hardware.xml: product families and products, one file per vendor
//  4. knx_master.xml: manufacturers, datapoint types, medium types, mask versions
//  5. M-*/M-*.xml: application programs (only when enabled)
//
// The first error aborts the build. Errors raised while a document is streamed
// are returned as *DocumentError; missing documents are reported before any
// document is read, as the archive discovery errors.
package etsproj
