// Package provider defines the capability contract between the unified
// API and vendor adapters.
//
// Each (feature, subfeature) pair is one small interface. A vendor
// adapter implements whichever capabilities its upstream API supports;
// the Registry inspects an adapter once at startup and resolves
// (vendor, feature, subfeature) lookups to the concrete implementation.
// There is no inheritance chain and no runtime plugin discovery.
package provider
