package model

// 所有模型的统一导入点
// 用于 AutoMigrate，父表在前保证外键依赖顺序
var AllModels = []interface{}{
	&Category{},
	&Tag{},
	&Faq{},
	&SimilarQuestion{},
	&FaqTag{},
	&FaqAnswer{},
}
