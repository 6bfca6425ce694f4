package result

import "time"

// Trend is one topic in a trending ranking.
type Trend struct {
	topicID            int64
	title              string
	slug               string
	categoryName       string
	recentPosts        int
	totalLikes         int
	lastActivity       time.Time
	uniqueParticipants int
}

// NewTrend creates a trending entry.
func NewTrend(
	topicID int64, title, slug, categoryName string,
	recentPosts, totalLikes int,
	lastActivity time.Time,
	uniqueParticipants int,
) Trend {
	return Trend{
		topicID:            topicID,
		title:              title,
		slug:               slug,
		categoryName:       categoryName,
		recentPosts:        recentPosts,
		totalLikes:         totalLikes,
		lastActivity:       lastActivity,
		uniqueParticipants: uniqueParticipants,
	}
}

// TopicID returns the topic id.
func (t *Trend) TopicID() int64 { return t.topicID }

// Title returns the topic title.
func (t *Trend) Title() string { return t.title }

// Slug returns the topic slug.
func (t *Trend) Slug() string { return t.slug }

// CategoryName returns the category name.
func (t *Trend) CategoryName() string { return t.categoryName }

// RecentPosts returns the post count inside the activity window.
func (t *Trend) RecentPosts() int { return t.recentPosts }

// TotalLikes returns the reactions accumulated inside the window.
func (t *Trend) TotalLikes() int { return t.totalLikes }

// LastActivity returns the most recent post time inside the window.
func (t *Trend) LastActivity() time.Time { return t.lastActivity }

// UniqueParticipants returns the distinct author count inside the window.
func (t *Trend) UniqueParticipants() int { return t.uniqueParticipants }
