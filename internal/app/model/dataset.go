package model

// DatasetRecord pairs one audio chunk with its transcript.
type DatasetRecord struct {
	AudioPath  string
	Transcript string
}

// RemoteDatasetRepo identifies a dataset repository as owner/name.
type RemoteDatasetRepo struct {
	Owner string
	Name  string
}

func (r RemoteDatasetRepo) String() string {
	return r.Owner + "/" + r.Name
}
