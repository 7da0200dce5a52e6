package repository

import "coachhub/models"

// Store keys, one per collection. Versions stamp the persisted schema so a
// deployed shape change becomes a deliberate migration instead of silent
// divergence.
const (
	keyUsers       = "coachhub:users"
	keyPosts       = "coachhub:blog_posts"
	keyProjects    = "coachhub:dashboard_projects"
	keyLessons     = "coachhub:lessons"
	keyKnowledge   = "coachhub:knowledge_categories"
	keyUploads     = "coachhub:user_uploads"
	keyNotes       = "coachhub:admin_notes"
	keyIssues      = "coachhub:diagnosis_issues"
	keyPermConfig  = "coachhub:permission_config"
	keyPermDefs    = "coachhub:permission_definitions"
	keyIntroVideo  = "coachhub:intro_video"
	keyAboutUs     = "coachhub:about_us"
	keyEmailLog    = "coachhub:email_log"
	schemaVersion  = 1
)

// Capability keys gating UI actions. The admin can add more through
// permission definitions; these are the built-in set.
const (
	CapDownloadResources = "download_resources"
	CapAIAssistant       = "ai_assistant"
	CapViewDashboard     = "view_dashboard"
	CapUploadFiles       = "upload_files"
	CapCourseNotes       = "course_notes"
)

func defaultUsers() []models.User {
	return []models.User{
		{ID: "1", Name: "管理员", Role: models.RoleAdmin, Plan: models.PlanPro, Email: "admin@coachhub.cn", CreatedAt: "2024-01-01"},
	}
}

func defaultPosts() []models.BlogPost {
	return []models.BlogPost{
		{
			ID:      "1001",
			Title:   "客服中心人员流失率为什么降不下来",
			Summary: "流失率居高不下往往不是单一薪酬问题，而是排班、晋升通道与现场管理的叠加结果。",
			Content: "<p>多数客服中心把流失归因于薪酬，但数据显示排班公平性与班组长管理水平的影响同样显著……</p>",
			Author:  "运营研究组",
			Date:    "2024-03-12",
			Tags:    []string{"人员流失", "运营管理"},
		},
		{
			ID:      "1002",
			Title:   "话务预测的三个常见误区",
			Summary: "预测偏差超过15%时，排班再精细也救不回服务水平。",
			Content: "<p>误区一：只看同比不看活动日历。误区二：用月均值排小时班。误区三：忽略渠道迁移……</p>",
			Author:  "运营研究组",
			Date:    "2024-02-28",
			Tags:    []string{"话务预测", "排班"},
		},
	}
}

func defaultProjects() []models.DashboardProject {
	return []models.DashboardProject{
		{
			ID:        "2001",
			Name:      "华东区客服中心流失诊断",
			Category:  "人员流失",
			Report:    "<p>本期流失率环比下降1.2个百分点，主要改善来自新人带教机制调整。</p>",
			UpdatedAt: "2024-03-01",
			KPIs: []models.KPIItem{
				{
					Label: "月流失率", Value: 6.8, Unit: "%", Target: 5.0,
					Trend: "down", Aggregation: "avg", Direction: "lower",
					Series: []models.KPIPoint{
						{Month: "2023-12", Value: 8.4},
						{Month: "2024-01", Value: 7.9},
						{Month: "2024-02", Value: 6.8},
					},
				},
				{
					Label: "人员利用率", Value: 82, Unit: "%", Target: 85,
					Trend: "up", Aggregation: "avg", Direction: "higher",
					Series: []models.KPIPoint{
						{Month: "2023-12", Value: 78},
						{Month: "2024-01", Value: 80},
						{Month: "2024-02", Value: 82},
					},
				},
			},
			Risk: models.Risk{
				Label: "整体风险", Value: "中", Icon: "alert", Color: "amber",
				Details: []models.RiskDetail{
					{ID: "r1", Name: "新人三月留存", Desc: "入职三个月内留存率偏低", Metric: "72%", Status: "关注"},
					{ID: "r2", Name: "夜班排班满意度", Desc: "夜班轮换不均引发投诉", Metric: "3.1/5", Status: "待改善"},
				},
			},
		},
	}
}

func defaultLessons() []models.Lesson {
	return []models.Lesson{
		{
			ID:              "3001",
			Title:           "班组长的一对一沟通",
			Duration:        "12:30",
			DurationSeconds: 750,
			Category:        "现场管理",
			Tags:            []string{"团队管理", "沟通"},
			Transcript: []models.TranscriptLine{
				{Time: 0, Text: "大家好，这节课我们讲班组长和坐席的一对一沟通。"},
				{Time: 35, Text: "一对一不是绩效面谈，而是了解状态、提前发现离职倾向的机会。"},
				{Time: 120, Text: "第一个工具是开放式提问，避免用是否问题开场。"},
				{Time: 300, Text: "第二个工具是复述确认，让对方感到被听见。"},
				{Time: 600, Text: "最后，每次沟通要落到一个双方认可的小行动上。"},
			},
			Highlights: []models.Highlight{
				{Label: "课程目标", Time: 0, Color: "blue"},
				{Label: "开放式提问", Time: 120, Color: "green"},
				{Label: "复述确认", Time: 300, Color: "green"},
			},
		},
		{
			ID:              "3002",
			Title:           "用数据定位流失根因",
			Duration:        "18:05",
			DurationSeconds: 1085,
			Category:        "人员流失",
			Tags:            []string{"人员流失", "数据分析"},
			Transcript: []models.TranscriptLine{
				{Time: 0, Text: "这节课我们把流失率拆成可归因的几个维度。"},
				{Time: 90, Text: "先按工龄分段：一个月内、三个月内、一年以上，各自的driver完全不同。"},
				{Time: 420, Text: "再叠加班组维度，管理因素会立刻显形。"},
			},
			Highlights: []models.Highlight{
				{Label: "工龄分段", Time: 90, Color: "blue"},
				{Label: "班组维度", Time: 420, Color: "amber"},
			},
		},
	}
}

func defaultKnowledge() []models.KnowledgeCategory {
	return []models.KnowledgeCategory{
		{
			ID: "4001", Name: "人员流失", Color: "red",
			Items: []models.KnowledgeItem{
				{Title: "流失诊断问卷模板", Type: "xlsx", Size: "86KB", Tags: []string{"模板"}},
				{Title: "离职面谈话术", Type: "pdf", Size: "1.2MB", Tags: []string{"话术"}},
			},
		},
		{
			ID: "4002", Name: "话务预测与排班", Color: "blue",
			Items: []models.KnowledgeItem{
				{Title: "小时级排班测算表", Type: "xlsx", Size: "210KB"},
			},
		},
		{ID: "4003", Name: "AI知识库", Color: "purple", IsAiRepository: true},
		{ID: "4004", Name: "项目报告", Color: "gray", IsProjectReports: true},
	}
}

func defaultIssues() []models.DiagnosisIssue {
	return []models.DiagnosisIssue{
		{
			ID:       "5001",
			Title:    "薪酬结构没有竞争力",
			UserText: "我们坐席的薪资在本地同行里偏低，调薪空间又有限，怎么办？",
			AIReply:  "薪酬竞争力不足时，可以先从结构入手：把固定与绩效的配比、夜班与技能津贴重新设计，往往比整体调薪更可行。能说说你们目前固定薪资占比大概多少吗？",
		},
		{
			ID:       "5002",
			Title:    "人员流失率居高不下",
			UserText: "最近半年流失率一直在8%以上，新人留不住。",
			AIReply:  "流失问题建议先分段看：一个月内流失多是招聘画像和岗前预期问题，三个月内多是带教和排班问题。你们流失集中在哪个工龄段？",
		},
		{
			ID:       "5003",
			Title:    "话务预测总是不准",
			UserText: "话务量预测偏差经常超过20%，排班完全对不上。",
			AIReply:  "预测偏差大通常是输入维度不够：活动日历、渠道迁移、天气节假日都要进模型。你们现在预测用的是什么口径的历史数据？",
		},
	}
}

func defaultPermissionConfig() models.PermissionConfig {
	return models.PermissionConfig{
		Free: map[string]bool{
			CapDownloadResources: false,
			CapAIAssistant:       false,
			CapViewDashboard:     true,
			CapUploadFiles:       true,
			CapCourseNotes:       false,
		},
		Pro: map[string]bool{
			CapDownloadResources: true,
			CapAIAssistant:       true,
			CapViewDashboard:     true,
			CapUploadFiles:       true,
			CapCourseNotes:       true,
		},
	}
}

func defaultPermissionDefinitions() []models.PermissionDefinition {
	return []models.PermissionDefinition{
		{ID: "p1", Key: CapDownloadResources, Label: "下载资料", Description: "下载解决方案库中的模板与文档"},
		{ID: "p2", Key: CapAIAssistant, Label: "AI课程助手", Description: "课程页的AI问答、划重点与笔记功能"},
		{ID: "p3", Key: CapViewDashboard, Label: "查看KPI看板"},
		{ID: "p4", Key: CapUploadFiles, Label: "上传文件"},
		{ID: "p5", Key: CapCourseNotes, Label: "课程笔记"},
	}
}

func defaultIntroVideo() models.IntroVideo {
	return models.IntroVideo{
		Title: "三分钟了解诊断服务",
		URL:   "https://cdn.coachhub.cn/intro.mp4",
	}
}

func defaultAboutUs() models.AboutUsInfo {
	return models.AboutUsInfo{
		Title:   "关于我们",
		Content: "<p>我们专注于客服中心运营诊断与教练式辅导，服务运营管理者十余年。</p>",
		Contact: "service@coachhub.cn",
	}
}

func defaultEmailLog() []models.EmailLog {
	return []models.EmailLog{}
}
