package repo

import (
	"database/sql"

	"github.com/xxxsen/afternote/internal/model"
	"github.com/xxxsen/afternote/internal/pkg/dbutil"
)

type enrichmentColumns struct {
	summary     sql.NullString
	tags        sql.NullString
	keyConcepts sql.NullString
}

func (e *enrichmentColumns) decode(dst *model.Enrichment) error {
	var err error
	dst.Summary = dbutil.StringPtr(e.summary)
	if dst.Tags, err = dbutil.DecodeStrings(e.tags); err != nil {
		return err
	}
	if dst.KeyConcepts, err = dbutil.DecodeStrings(e.keyConcepts); err != nil {
		return err
	}
	return nil
}

func encodeEnrichment(e model.Enrichment, data map[string]interface{}) error {
	tags, err := dbutil.NullableJSON(e.Tags)
	if err != nil {
		return err
	}
	concepts, err := dbutil.NullableJSON(e.KeyConcepts)
	if err != nil {
		return err
	}
	data["summary"] = dbutil.NullString(e.Summary)
	data["tags"] = tags
	data["key_concepts"] = concepts
	return nil
}
