package entity

// Movie는 영화 정보와 리뷰 목록을 합친 응답 전용 집계입니다. 저장되지 않습니다
type Movie struct {
	MovieInfo  *MovieInfo
	ReviewList []*Review
}

// NewMovie는 Movie를 만듭니다. 리뷰가 없으면 nil이 아닌 빈 슬라이스를 가집니다
func NewMovie(info *MovieInfo, reviews []*Review) *Movie {
	if reviews == nil {
		reviews = []*Review{}
	}
	return &Movie{MovieInfo: info, ReviewList: reviews}
}
