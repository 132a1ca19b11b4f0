package services

import (
	"fmt"
	"math"
	"math/rand"
	"strings"
	"time"

	"github.com/alphabatem/common/context"
	log "github.com/sirupsen/logrus"

	"github.com/shulecoach/shule_api/dto"
	"github.com/shulecoach/shule_api/model"
	"github.com/shulecoach/shule_api/shared"
)

// QuizService serves multiple-choice questions from a static KCSE bank and
// scores submissions against a study session.
type QuizService struct {
	context.DefaultService

	studySvc *StudyService
	userSvc  *UserService
	monSvc   *MonitoringService

	rng *rand.Rand
}

const QUIZ_SVC = "quiz_svc"

func (svc QuizService) Id() string {
	return QUIZ_SVC
}

func (svc *QuizService) Configure(ctx *context.Context) error {
	svc.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	return svc.DefaultService.Configure(ctx)
}

func (svc *QuizService) Start() error {
	svc.studySvc = svc.Service(STUDY_SVC).(*StudyService)
	svc.userSvc = svc.Service(USER_SVC).(*UserService)
	svc.monSvc = svc.Service(MONITORING_SVC).(*MonitoringService)
	return nil
}

// questionBank is the built-in KCSE revision set, keyed by subject.
var questionBank = map[string][]dto.QuizQuestion{
	"mathematics": {
		{Question: "Solve for x: 2x + 5 = 13", Options: []string{"x = 3", "x = 4", "x = 5", "x = 6"}, Correct: 1, Difficulty: shared.DifficultyEasy, Topic: "Linear Equations"},
		{Question: "What is the area of a circle with radius 7cm? (Use π = 22/7)", Options: []string{"154 cm²", "144 cm²", "164 cm²", "174 cm²"}, Correct: 0, Difficulty: shared.DifficultyMedium, Topic: "Geometry"},
		{Question: "Simplify: 3(2x - 4) + 2x", Options: []string{"8x - 12", "6x - 12", "8x - 4", "6x + 12"}, Correct: 0, Difficulty: shared.DifficultyEasy, Topic: "Algebraic Expressions"},
		{Question: "Find the gradient of the line passing through (2, 3) and (6, 11)", Options: []string{"1", "2", "3", "4"}, Correct: 1, Difficulty: shared.DifficultyMedium, Topic: "Coordinate Geometry"},
	},
	"english": {
		{Question: "Choose the correct sentence:", Options: []string{"She go to school", "She goes to school", "She going to school", "She gone to school"}, Correct: 1, Difficulty: shared.DifficultyEasy, Topic: "Grammar"},
		{Question: "What is the plural of 'analysis'?", Options: []string{"analysises", "analyses", "analysis", "analysi"}, Correct: 1, Difficulty: shared.DifficultyMedium, Topic: "Grammar"},
	},
	"kiswahili": {
		{Question: "Neno 'mwalimu' liko katika ngeli gani?", Options: []string{"KI-VI", "M-WA", "LI-YA", "U-I"}, Correct: 1, Difficulty: shared.DifficultyEasy, Topic: "Ngeli"},
		{Question: "Methali 'Haraka haraka...' inamalizikaje?", Options: []string{"haina baraka", "ina baraka", "huleta mafanikio", "ni hasara"}, Correct: 0, Difficulty: shared.DifficultyEasy, Topic: "Methali"},
	},
	"biology": {
		{Question: "Which organelle is known as the powerhouse of the cell?", Options: []string{"Nucleus", "Mitochondria", "Ribosome", "Golgi apparatus"}, Correct: 1, Difficulty: shared.DifficultyMedium, Topic: "Cell Biology"},
		{Question: "What process do plants use to make their own food?", Options: []string{"Respiration", "Photosynthesis", "Transpiration", "Osmosis"}, Correct: 1, Difficulty: shared.DifficultyEasy, Topic: "Nutrition"},
	},
	"chemistry": {
		{Question: "What is the chemical formula for water?", Options: []string{"H2O", "CO2", "NaCl", "O2"}, Correct: 0, Difficulty: shared.DifficultyEasy, Topic: "Chemical Formulas"},
		{Question: "Which gas is produced when an acid reacts with a metal?", Options: []string{"Oxygen", "Hydrogen", "Carbon dioxide", "Nitrogen"}, Correct: 1, Difficulty: shared.DifficultyMedium, Topic: "Acids and Bases"},
	},
	"physics": {
		{Question: "What is the SI unit of force?", Options: []string{"Joule", "Newton", "Watt", "Pascal"}, Correct: 1, Difficulty: shared.DifficultyEasy, Topic: "Forces"},
		{Question: "A body of mass 2kg accelerates at 3 m/s². What force acts on it?", Options: []string{"1.5 N", "5 N", "6 N", "9 N"}, Correct: 2, Difficulty: shared.DifficultyMedium, Topic: "Newton's Laws"},
	},
	"history": {
		{Question: "In which year did Kenya attain independence?", Options: []string{"1960", "1962", "1963", "1964"}, Correct: 2, Difficulty: shared.DifficultyEasy, Topic: "Independence"},
		{Question: "Who was the first President of Kenya?", Options: []string{"Daniel arap Moi", "Jomo Kenyatta", "Mwai Kibaki", "Oginga Odinga"}, Correct: 1, Difficulty: shared.DifficultyEasy, Topic: "Independence"},
	},
	"geography": {
		{Question: "Which is the largest lake in Kenya?", Options: []string{"Lake Victoria", "Lake Turkana", "Lake Naivasha", "Lake Nakuru"}, Correct: 1, Difficulty: shared.DifficultyMedium, Topic: "Lakes"},
		{Question: "The Great Rift Valley was formed through:", Options: []string{"Folding", "Faulting", "Volcanicity", "Erosion"}, Correct: 1, Difficulty: shared.DifficultyMedium, Topic: "Landforms"},
	},
	"cre": {
		{Question: "Who led the Israelites out of Egypt?", Options: []string{"Abraham", "Moses", "Joshua", "David"}, Correct: 1, Difficulty: shared.DifficultyEasy, Topic: "The Exodus"},
		{Question: "How many disciples did Jesus choose?", Options: []string{"10", "11", "12", "13"}, Correct: 2, Difficulty: shared.DifficultyEasy, Topic: "Ministry of Jesus"},
	},
}

// Generate filters the bank by subject, difficulty and topic, shuffles and
// samples count questions. An empty match still yields one placeholder so
// the client always has something to render.
func (svc *QuizService) Generate(userID string, req dto.GenerateQuizRequest) (*dto.GenerateQuizResponse, error) {
	canAsk, limit, used, err := svc.userSvc.CanAskQuestions(userID)
	if err != nil {
		return nil, err
	}
	if !canAsk {
		svc.monSvc.QuotaRejection()
		return nil, shared.NewQuotaExceededError(limit, used)
	}

	count := req.Count
	if count < 1 {
		count = 5
	}
	if count > 20 {
		count = 20
	}

	pool := make([]dto.QuizQuestion, 0)
	for _, q := range questionBank[req.Subject] {
		if req.Difficulty != "" && q.Difficulty != req.Difficulty {
			continue
		}
		if req.Topic != "" && !strings.Contains(strings.ToLower(q.Topic), strings.ToLower(req.Topic)) {
			continue
		}
		pool = append(pool, q)
	}

	svc.rng.Shuffle(len(pool), func(i, j int) {
		pool[i], pool[j] = pool[j], pool[i]
	})
	if len(pool) > count {
		pool = pool[:count]
	}

	if len(pool) == 0 {
		pool = append(pool, svc.placeholderQuestion(req))
	}

	remaining := shared.UnlimitedQuestions
	if limit != shared.UnlimitedQuestions {
		remaining = limit - used
	}

	svc.monSvc.QuizGenerated(req.Subject)
	log.WithFields(log.Fields{"subject": req.Subject, "count": len(pool)}).Debug("Quiz generated")

	return &dto.GenerateQuizResponse{
		Questions:          pool,
		Subject:            req.Subject,
		Difficulty:         req.Difficulty,
		Topic:              req.Topic,
		Count:              len(pool),
		RemainingQuestions: remaining,
	}, nil
}

func (svc *QuizService) placeholderQuestion(req dto.GenerateQuizRequest) dto.QuizQuestion {
	topic := req.Topic
	if topic == "" {
		topic = "general concepts"
	}
	difficulty := req.Difficulty
	if difficulty == "" {
		difficulty = shared.DifficultyMedium
	}
	return dto.QuizQuestion{
		Question:   fmt.Sprintf("Sample %s question about %s", req.Subject, topic),
		Options:    []string{"Option A", "Option B", "Option C", "Option D"},
		Correct:    0,
		Difficulty: difficulty,
		Topic:      topic,
	}
}

// Submit scores the answers against their recorded correct options, rewrites
// the session's question log from the submission and completes the session.
func (svc *QuizService) Submit(userID string, req dto.SubmitQuizRequest) (*dto.SubmitQuizResponse, error) {
	session, err := svc.studySvc.ownedSession(userID, req.SessionID)
	if err != nil {
		return nil, err
	}

	if session.IsTerminal() {
		return nil, shared.NewBadRequestError("Quiz session is already " + session.Status)
	}

	now := time.Now()
	correct := 0
	results := make([]dto.QuestionResult, 0, len(req.Answers))
	questions := make([]model.SessionQuestion, 0, len(req.Answers))

	for i, answer := range req.Answers {
		isCorrect := answer.SelectedOption == answer.CorrectOption
		if isCorrect {
			correct++
		}

		results = append(results, dto.QuestionResult{
			Question:       fmt.Sprintf("Question %d", i+1),
			SelectedOption: answer.SelectedOption,
			CorrectOption:  answer.CorrectOption,
			IsCorrect:      isCorrect,
			TimeSpent:      answer.TimeSpent,
		})

		ic := isCorrect
		questions = append(questions, model.SessionQuestion{
			Question:     fmt.Sprintf("Question %d", i+1),
			Answer:       fmt.Sprintf("Option %d", answer.CorrectOption),
			UserResponse: fmt.Sprintf("Option %d", answer.SelectedOption),
			IsCorrect:    &ic,
			Difficulty:   shared.DifficultyMedium,
			TimeSpent:    answer.TimeSpent,
			Timestamp:    now,
		})
	}

	if err := session.SetQuestionLog(questions); err != nil {
		return nil, err
	}

	session.Status = shared.SessionCompleted
	session.EndTime = &now
	session.Duration = int(math.Round(float64(req.TimeSpent) / 60))

	if err := svc.studySvc.sqlSvc.Sessions().UpdateSession(session); err != nil {
		return nil, err
	}

	if err := svc.userSvc.RecordSubjectResult(userID, session.Subject, len(req.Answers), session.Score); err != nil {
		log.WithError(err).WithField("session_id", session.ID).Warn("Failed to fold quiz result into subject progress")
	}

	svc.monSvc.QuizSubmitted(session.Subject, session.Score)

	resp, err := svc.studySvc.mapSession(session)
	if err != nil {
		return nil, err
	}

	return &dto.SubmitQuizResponse{
		Score:           session.Score,
		CorrectAnswers:  session.CorrectAnswers,
		TotalQuestions:  session.TotalQuestions,
		TimeSpent:       req.TimeSpent,
		QuestionResults: results,
		Session:         *resp,
	}, nil
}

// History lists the user's completed sessions, newest first.
func (svc *QuizService) History(userID string, page, limit int) (*dto.QuizHistoryResponse, error) {
	list, err := svc.studySvc.ListSessions(userID, "", shared.SessionCompleted, page, limit)
	if err != nil {
		return nil, err
	}

	return &dto.QuizHistoryResponse{
		History:    list.Sessions,
		Pagination: list.Pagination,
	}, nil
}
