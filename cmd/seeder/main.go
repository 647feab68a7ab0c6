// cmd/seeder/main.go

package main

import (
	"WeTube/internal/config"
	"WeTube/internal/data"
	"WeTube/internal/database"
	"WeTube/internal/model"
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/go-faker/faker/v4"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	userCount         = 100
	videoCount        = 500
	likeCount         = 1000
	subscriptionCount = 300
	noticeCount       = 15
)

var hashtagPool = []string{"vlog", "music", "game", "study", "travel", "cooking", "pet", "sports"}

func main() {
	fmt.Println("🚀 开始填充测试数据...")

	// --- 1. 连接数据库，和server用同一份配置 ---
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ 配置加载失败: %v", err)
	}
	db, err := database.Open(cfg.DB)
	if err != nil {
		log.Fatalf("❌ 无法连接到数据库: %v", err)
	}
	fmt.Println("✅ 数据库连接成功!")

	// --- 2. 清理旧数据，注意：这将删除所有数据！ ---
	fmt.Println("🧹 正在清理旧数据...")
	tables := append([]interface{}{"video_hashtags"}, model.AllModels()...)
	if err := db.Migrator().DropTable(tables...); err != nil {
		log.Fatalf("❌ 删除旧表失败: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatalf("❌ 数据库迁移失败: %v", err)
	}
	fmt.Println("✅ 数据库迁移成功!")

	repos := data.NewRepositories(db)
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	// --- 3. 创建用户，所有人的密码都是 "password" ---
	fmt.Println("👥 正在创建用户...")
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("❌ 密码加密失败: %v", err)
	}
	admin := &model.User{
		Username: "admin",
		Email:    "admin@wetube.local",
		Password: string(hashedPassword),
		Nickname: "管理员",
		Role:     model.RoleAdmin,
	}
	if err := repos.UserRepo.Create(admin); err != nil {
		log.Fatalf("❌ 创建管理员失败: %v", err)
	}
	userIDs := make([]uint64, 0, userCount)
	for i := 0; i < userCount; i++ {
		// 加序号，faker偶尔会生成重复的用户名
		user := &model.User{
			Username:    fmt.Sprintf("%s%d", faker.Username(), i),
			Email:       fmt.Sprintf("user%d_%s", i, faker.Email()),
			Password:    string(hashedPassword),
			Nickname:    fmt.Sprintf("%s%d", faker.FirstName(), i),
			Role:        model.RoleUser,
			BirthDate:   faker.Date(),
			PhoneNumber: faker.Phonenumber(),
			Gender:      faker.Gender(),
		}
		if err := repos.UserRepo.Create(user); err != nil {
			log.Fatalf("❌ 创建用户失败: %v", err)
		}
		userIDs = append(userIDs, user.ID)
	}
	fmt.Printf("✅ 成功创建 %d 个用户(另有管理员 admin)!\n", userCount)

	// --- 4. 创建视频，作者从刚才的用户里随机挑 ---
	fmt.Println("🎬 正在创建视频...")
	videoIDs := make([]uint64, 0, videoCount)
	for i := 0; i < videoCount; i++ {
		hashtags, err := repos.HashtagRepo.FindOrCreate(pickHashtags(rng))
		if err != nil {
			log.Fatalf("❌ 创建标签失败: %v", err)
		}
		video := &model.Video{
			AuthorID:     userIDs[rng.Intn(len(userIDs))],
			Title:        faker.Sentence(),
			Description:  faker.Paragraph(),
			VideoURL:     "https://test.com/video.mp4",
			ThumbnailURL: "https://test.com/thumbnail.jpg",
			Views:        uint64(rng.Intn(10000)),
			Hashtags:     hashtags,
		}
		if err := repos.VideoRepo.Create(video); err != nil {
			log.Fatalf("❌ 创建视频失败: %v", err)
		}
		videoIDs = append(videoIDs, video.ID)
	}
	fmt.Printf("✅ 成功创建 %d 个视频!\n", videoCount)

	// --- 5. 创建随机点赞和订阅，重复的直接跳过 ---
	fmt.Println("👍 正在创建随机点赞...")
	for i := 0; i < likeCount; i++ {
		like := model.VideoLike{
			UserID:  userIDs[rng.Intn(len(userIDs))],
			VideoID: videoIDs[rng.Intn(len(videoIDs))],
		}
		db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "video_id"}},
			DoNothing: true,
		}).Create(&like)
	}
	fmt.Printf("✅ 成功创建(或尝试创建) %d 个随机点赞!\n", likeCount)

	fmt.Println("🔔 正在创建随机订阅...")
	for i := 0; i < subscriptionCount; i++ {
		sub := model.Subscription{
			SubscriberID: userIDs[rng.Intn(len(userIDs))],
			ChannelID:    userIDs[rng.Intn(len(userIDs))],
		}
		if sub.SubscriberID == sub.ChannelID {
			continue
		}
		db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "subscriber_id"}, {Name: "channel_id"}},
			DoNothing: true,
		}).Create(&sub)
	}
	fmt.Printf("✅ 成功创建(或尝试创建) %d 个随机订阅!\n", subscriptionCount)

	// --- 6. 公告 ---
	for i := 0; i < noticeCount; i++ {
		notice := &model.Notice{Title: faker.Sentence(), Content: faker.Paragraph()}
		if err := repos.NoticeRepo.Create(notice); err != nil {
			log.Fatalf("❌ 创建公告失败: %v", err)
		}
	}
	fmt.Printf("✅ 成功创建 %d 条公告!\n", noticeCount)

	// --- 7. 上面的点赞是直接插的，把videos.like_count和video_likes对齐 ---
	fmt.Println("🔧 正在同步点赞数...")
	if err := reconcileLikeCounts(db, repos, videoIDs); err != nil {
		log.Fatalf("❌ 同步点赞数失败: %v", err)
	}
	fmt.Println("✅ 点赞数同步完成!")

	fmt.Println("🎉🎉🎉 所有测试数据填充完毕! 🎉🎉🎉")
}

func pickHashtags(rng *rand.Rand) []string {
	n := rng.Intn(4)
	names := make([]string, 0, n)
	for _, idx := range rng.Perm(len(hashtagPool))[:n] {
		names = append(names, hashtagPool[idx])
	}
	return names
}

func reconcileLikeCounts(db *gorm.DB, repos *data.Repositories, videoIDs []uint64) error {
	for _, videoID := range videoIDs {
		count, err := repos.LikeRepo.CountByVideo(videoID)
		if err != nil {
			return err
		}
		if err := db.Model(&model.Video{}).Where("id = ?", videoID).UpdateColumn("like_count", count).Error; err != nil {
			return err
		}
	}
	return nil
}
