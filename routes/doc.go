// Package routes classifies request paths into the public and private route
// sets consulted by the gating engine. Classification is pure computation
// over in-memory pattern lists; the package never touches the request beyond
// its path.
package routes
