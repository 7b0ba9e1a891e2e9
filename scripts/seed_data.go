// 手动导入演示数据脚本
//
// 向数据库写入几本示例图书和配套题目（三种题型各有覆盖），
// 用于本地开发和前端联调。重复执行会产生重复数据，仅限空库使用。
//
// 用法: go run scripts/seed_data.go

package main

import (
	"bookquiz_backend/internal/config"
	"bookquiz_backend/internal/model"
	"bookquiz_backend/pkg/database"
	"bookquiz_backend/pkg/logger"
	"log"
)

func intPtr(v int) *int    { return &v }
func boolPtr(v bool) *bool { return &v }

func main() {
	cfg, err := config.LoadConfig("configs")
	if err != nil {
		log.Fatalf("无法读取配置文件: %v", err)
	}

	logger.InitLogger(cfg)

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		log.Fatalf("数据库连接失败: %v", err)
	}

	book := &model.Book{
		Title:       "어린 왕자",
		Author:      "생텍쥐페리",
		Translator:  "김화영",
		Publisher:   "문학동네",
		Description: "사막에 불시착한 조종사가 만난 어린 왕자의 이야기",
		Price:       12000,
	}
	if err := db.Create(book).Error; err != nil {
		log.Fatalf("图书写入失败: %v", err)
	}

	quizzes := []model.Quiz{
		{
			BookID:             book.ID,
			Type:               model.QuizTypeMultipleChoice,
			Title:              "어린 왕자가 떠나온 별의 이름은?",
			Options:            model.StringList{"B-612", "B-301", "A-113"},
			CorrectAnswerIndex: intPtr(0),
			Explanation:        "어린 왕자는 소행성 B-612에서 왔다.",
		},
		{
			BookID:            book.ID,
			Type:              model.QuizTypeSubjective,
			Title:             "어린 왕자가 아끼던 꽃은 무엇인가요?",
			CorrectAnswerText: "장미",
			AlternateAnswers:  model.StringList{"장미꽃"},
			MaxWords:          3,
		},
		{
			BookID:            book.ID,
			Type:              model.QuizTypeTrueFalse,
			Title:             "여우는 어린 왕자에게 길들여짐에 대해 이야기했다.",
			CorrectAnswerBool: boolPtr(true),
		},
	}
	for i := range quizzes {
		if err := db.Create(&quizzes[i]).Error; err != nil {
			log.Fatalf("题目写入失败: %v", err)
		}
	}

	log.Printf("完成！图书 %d，题目 %d 道", book.ID, len(quizzes))
}
