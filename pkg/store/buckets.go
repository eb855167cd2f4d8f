package store

// The following are the names of the buckets in the database.
const (
	bucketPage = "page"
)
