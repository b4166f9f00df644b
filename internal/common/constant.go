// Package common contains shared constants and sentinel errors used across
// FlowDeck components.
package common

// OfflineUserID is the sentinel owner id assigned to records created while
// offline mode is active, and to the identity synthesized for offline
// sessions. It can never collide with a server-assigned user id.
const OfflineUserID int64 = -1

// OfflineUsername is the username of the synthesized offline identity.
const OfflineUsername = "offline"
