// Package services implements the Spotify Web API client used by the jukebox server.
//
// [SpotifyService] covers the three OAuth grants the application needs
// (authorization code, refresh token, client credentials) and the album
// catalog endpoints (search, single album, batch albums). The [Identity] and
// [Catalog] interfaces keep handlers and the token broker decoupled from the
// concrete client so tests can substitute fakes.
package services
