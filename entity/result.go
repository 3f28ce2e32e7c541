package entity

// WriteResult is the acknowledgement of a single store write, echoed to clients.
type WriteResult struct {
	Acknowledged  bool        `json:"acknowledged"`
	InsertedID    interface{} `json:"insertedId,omitempty"`
	MatchedCount  *int64      `json:"matchedCount,omitempty"`
	ModifiedCount *int64      `json:"modifiedCount,omitempty"`
	UpsertedCount *int64      `json:"upsertedCount,omitempty"`
	UpsertedID    interface{} `json:"upsertedId,omitempty"`
	DeletedCount  *int64      `json:"deletedCount,omitempty"`
}

func Inserted(id interface{}) *WriteResult {
	return &WriteResult{Acknowledged: true, InsertedID: id}
}

func Updated(matched, modified, upserted int64, upsertedID interface{}) *WriteResult {
	return &WriteResult{
		Acknowledged:  true,
		MatchedCount:  &matched,
		ModifiedCount: &modified,
		UpsertedCount: &upserted,
		UpsertedID:    upsertedID,
	}
}

func Deleted(n int64) *WriteResult {
	return &WriteResult{Acknowledged: true, DeletedCount: &n}
}
