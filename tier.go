package jango

// Tier identifies the serving mode selected for a question. The service
// degrades through the tiers rather than failing outright when parts of the
// system are unavailable.
type Tier string

const (
	// TierFull serves retrieval-augmented answers with citations.
	TierFull Tier = "full"

	// TierReduced serves raw document excerpts matched by keyword when the
	// vector index cannot be used but documents exist.
	TierReduced Tier = "reduced"

	// TierMinimal serves a fixed notice that no content is available.
	TierMinimal Tier = "minimal"
)

// SelectTier picks the serving tier from component availability. Full
// service needs a ready index and a working generator; reduced service
// needs only stored documents; anything less is minimal.
func SelectTier(indexState IndexState, hasDocuments, generatorReady bool) Tier {
	if indexState == IndexReady && generatorReady {
		return TierFull
	}
	if hasDocuments {
		return TierReduced
	}
	return TierMinimal
}
