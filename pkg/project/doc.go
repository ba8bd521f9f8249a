// Package project implements the in-memory document model of a parsed ETS project.
//
// # Model Hierarchy
//
// A Project aggregates several independent structures that are filled while the
// archive's documents are streamed:
//
//	Project
//	├── ProjectInformation
//	├── Topology
//	│   ├── Area > Line > Device
//	│   │            └── Security, ParameterReferences,
//	│   │                CommunicationReferences > Connectors > Send/Receive
//	│   └── UnassignedDevices
//	├── Buildings      (recursive BuildingPart forest)
//	├── GroupAddresses (recursive GroupRange forest)
//	└── Reference tables
//	    ProductFamilies, Manufacturers, DatapointTypes, MediumTypes,
//	    ApplicationPrograms, MaskVersions
//
// # References
//
// Entities never point at each other. Cross-entity links are stored as opaque
// identifier strings (the *RefID fields) and are resolved on demand with the
// lookup methods (Manufacturer, ProductFamily, GroupAddress, ...). A lookup for an
// identifier that was never parsed reports false; it is not an error, because a
// project may reference data that a partial master-data set does not contain.
//
// # Addresses
//
// Line and device addresses are stored short ("1") by the source format and are
// rewritten to their dotted form ("1.1", "1.1.1") by Topology.NormalizeAddresses.
// The rewrite is guarded by the address length so it can be applied again to an
// already normalized model without changing it.
//
// # Export
//
// Serialize converts a Project into nested maps and slices; Deserialize rebuilds a
// Project from that form and normalizes its addresses.
package project
