// Package models defines the wardrobe client's data model: the resolved
// identity, outfit items with their open-schema tag mapping, suggestion
// results, weekly plans and chat messages, plus the wire DTOs of the backend
// contract.
package models
