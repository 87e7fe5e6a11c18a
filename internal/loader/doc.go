// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package loader turns raw snapshot documents into snapshot.Snapshot values,
// decrypting passphrase protected envelopes on the way.
//
// An envelope looks like
//
//	{"meta":{"key_provider.pbkdf2.key":"<b64 json>"},"encrypted_data":"<b64>"}
//
// where the meta entry holds the PBKDF2 salt, iterations, hash function and
// key length, and encrypted_data is an AES-GCM nonce followed by ciphertext.
package loader
