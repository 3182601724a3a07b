package main

import (
	"fmt"
	"log"
	"time"

	"github.com/Wahla-007/Suf-Proj/app/config"
	"github.com/Wahla-007/Suf-Proj/app/database"
	"github.com/Wahla-007/Suf-Proj/app/models"
	"github.com/shopspring/decimal"
)

// Seeds a development database with an admin, a few teachers, a priced
// weekly plan, the water fee and two weeks of attendance.
func main() {
	config.InitDB()
	db := config.GetDB()
	if db == nil {
		log.Fatal("Failed to connect to database")
	}
	defer db.Close()

	if err := database.RunMigrations(db); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	admin := &models.User{
		Email:    "admin@mess.local",
		Password: "Admin@1234",
		FullName: "Mess Admin",
		IsAdmin:  true,
	}
	if err := database.CreateUser(db, admin); err != nil {
		log.Printf("Skipping admin: %v", err)
	} else {
		fmt.Printf("Created admin %s\n", admin.Email)
	}

	teachers := []*models.User{
		{Email: "ayesha.khan@mess.local", Password: "Teacher@1", FullName: "Ayesha Khan"},
		{Email: "bilal.ahmed@mess.local", Password: "Teacher@1", FullName: "Bilal Ahmed"},
		{Email: "sana.malik@mess.local", Password: "Teacher@1", FullName: "Sana Malik"},
	}
	for _, t := range teachers {
		if err := database.CreateUser(db, t); err != nil {
			log.Printf("Skipping teacher %s: %v", t.Email, err)
			continue
		}
		fmt.Printf("Created teacher %s\n", t.Email)
	}

	if err := database.SetSetting(db, models.SettingWaterFee, "150"); err != nil {
		log.Printf("Failed to set water fee: %v", err)
	}

	weekStart := database.NextMonday(time.Now()).AddDate(0, 0, -7)
	plan := &models.WeeklyPlan{
		WeekStart:   weekStart,
		CreatedByID: admin.ID,
	}
	for dow := 0; dow < 7; dow++ {
		day := models.NewDefaultPlanDay(dow)
		day.BreakfastName = "Paratha & Chai"
		day.LunchName = "Daal Chawal"
		day.DinnerName = "Chicken Karahi"
		day.BreakfastPrice = decimal.NewFromInt(80)
		day.LunchPrice = decimal.NewFromInt(150)
		day.DinnerPrice = decimal.NewFromInt(220)
		plan.Days = append(plan.Days, day)
	}
	if err := database.CreateWeeklyPlan(db, plan); err != nil {
		log.Printf("Skipping weekly plan: %v", err)
	} else {
		fmt.Printf("Created weekly plan for week of %s\n", weekStart.Format("2006-01-02"))
	}

	// Two weeks of attendance ending today
	for _, t := range teachers {
		if t.ID == "" {
			continue
		}
		for i := 0; i < 14; i++ {
			date := database.CivilDay(time.Now()).AddDate(0, 0, -i)
			record := &models.Attendance{
				TeacherID: t.ID,
				Date:      &date,
				Breakfast: i%2 == 0,
				Lunch:     true,
				Dinner:    i%3 != 0,
				MarkedBy:  admin.Email,
			}
			if err := database.CreateAttendance(db, record); err != nil {
				log.Printf("Skipping attendance %s %s: %v", t.Email, date.Format("2006-01-02"), err)
			}
		}
	}

	// One open dispute for the admin review queue
	if len(teachers) > 0 && teachers[0].ID != "" {
		disputeDate := database.CivilDay(time.Now()).AddDate(0, 0, -2)
		if record, err := database.GetAttendanceByTeacherAndDate(db, teachers[0].ID, disputeDate); err == nil && record != nil {
			if err := database.RaiseDispute(db, record.ID, teachers[0].ID, "I was on leave that day"); err != nil {
				log.Printf("Skipping dispute: %v", err)
			} else {
				fmt.Printf("Raised dispute on %s for %s\n", disputeDate.Format("2006-01-02"), teachers[0].Email)
			}
		}
	}

	fmt.Println("Seed completed")
}
