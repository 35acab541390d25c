package model

type AdminOverview struct {
	TotalPosts    int64            `json:"totalPosts"`
	TotalComments int64            `json:"totalComments"`
	TotalUsers    int64            `json:"totalUsers"`
	Activity      []RecentActivity `json:"activity"`
}

type RecentActivity struct {
	Type           string `json:"type"`
	ID             int64  `json:"id"`
	TitleOrContent string `json:"titleOrContent"`
	Author         string `json:"author"`
	CreatedAt      string `json:"createdAt"`
}
