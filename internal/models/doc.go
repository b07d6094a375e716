// Package models defines domain entities and persistence interfaces for the jukebox service.
//
// Persistent entities are database-backed models with full lifecycle management:
//   - [User] : Spotify-backed accounts holding profile fields and the stored OAuth refresh token
//   - [Review] : Album ratings (1-10) with optional body text
//   - [List] : Ranked or unranked album collections
//   - [ListItem] : Junction rows linking lists to albums with ordering positions
//
// All persistent entities implement the Model interface providing ID generation, timestamps, validation, and soft delete support.
// The Repository[T] interface defines standard CRUD operations for database access.
package models
