package ports

type Metrics interface {
	ApplicationTransition(from, to string)
	CampaignsExpired(n int)
}
