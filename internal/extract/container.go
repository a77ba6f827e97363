package extract

import "github.com/saulo-duarte/examen-backup/internal/course"

type ExtractContainer struct {
	Service Service
}

func NewExtractContainer(data *course.Data) *ExtractContainer {
	return &ExtractContainer{
		Service: NewService(data.Quizzes),
	}
}
