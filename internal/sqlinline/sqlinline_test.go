package sqlinline

import (
	"testing"

	"agrifields/internal/infra"
)

func TestQueriesCarryUniqueMarkers(t *testing.T) {
	queries := map[string]string{
		"QUpsertProfile":              QUpsertProfile,
		"QSelectProfileByUID":         QSelectProfileByUID,
		"QUpdateProfile":              QUpdateProfile,
		"QSelectProfileByEmail":       QSelectProfileByEmail,
		"QUpdateProfileRole":          QUpdateProfileRole,
		"QCountProfilesByRole":        QCountProfilesByRole,
		"QIdentityExists":             QIdentityExists,
		"QInsertIdentity":             QInsertIdentity,
		"QSelectIdentityByIdentifier": QSelectIdentityByIdentifier,
		"QTouchIdentityLogin":         QTouchIdentityLogin,
		"QSelectIntegrationToken":     QSelectIntegrationToken,
		"QUpsertIntegrationToken":     QUpsertIntegrationToken,
	}

	seen := make(map[string]string, len(queries))
	for name, query := range queries {
		marker, body, err := infra.ExtractMarker(query)
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		if body == "" {
			t.Fatalf("%s: empty body", name)
		}
		if other, dup := seen[marker]; dup {
			t.Fatalf("%s reuses marker %s from %s", name, marker, other)
		}
		seen[marker] = name
	}
}
