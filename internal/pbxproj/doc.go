// Package pbxproj loads, inspects, and saves Xcode project descriptors
// (the project.pbxproj file inside a .xcodeproj bundle). The descriptor is an
// OpenStep property list whose objects section is a flat id -> object map;
// this package resolves targets and their build configurations through that
// graph and writes the document back in the same format.
package pbxproj
