// Package jango provides a retrieval-augmented question answering service
// for the Angolan energy sector. It scrapes the websites of sector
// institutions (Sonangol, ANPG, Azule Energy, TotalEnergies Angola),
// indexes the content locally for semantic search, and answers natural
// language questions by retrieving relevant passages and delegating text
// generation to the Gemini API, with enforced source citations.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., sqlite/, gemini/, fiber/).
package jango
