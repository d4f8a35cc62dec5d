package models

// Stats is the precomputed dashboard aggregate from GET /api/stats.
type Stats struct {
	TotalProperties  int          `json:"total_properties"`
	TotalLeads       int          `json:"total_leads"`
	TotalRequests    int          `json:"total_requests"`
	TotalUsers       int          `json:"total_users,omitempty"`
	PropertiesByArea []AreaBucket `json:"properties_by_area"`
}

// AreaBucket is one group-by bucket of the properties-by-area breakdown.
// The upstream Mongo aggregation keys the bucket by "_id".
type AreaBucket struct {
	Area  string `json:"_id"`
	Count int    `json:"count"`
}
