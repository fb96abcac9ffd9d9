// Sifter - Personal Content Discovery Assistant
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sifter

// Package services adapts Sifter components to suture.Service.
//
// Each service blocks in Serve until its context is canceled, returns an
// error when it cannot continue so its supervisor restarts it, and
// implements fmt.Stringer so supervisor events name it.
package services
