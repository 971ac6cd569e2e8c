package unrestrict

// Question is one reflective prompt shown before a restriction can be lifted.
type Question struct {
	Prompt string
	Hint   string
}

// DefaultPool is the fixed set questions are drawn from.
var DefaultPool = []Question{
	{"Did you finish something worth a reward, or are you just back here again?", "\"Yes\" means a short break. \"No\" means back to work."},
	{"Is this actually urgent, or is your hand just restless?", "Be honest with yourself."},
	{"Are you changing the world right now, or hiding from your to-do list?", "Your future self is keeping score."},
	{"Did the app message you to say it misses you? No? Then why open it?", "It will survive a few more hours without you."},
	{"Have you spent enough time today already, or are you chasing a new record?", "Not every record is worth setting."},
	{"Would the motivated version of you from last week sign off on this?", "You remember that plan."},
	{"Is this part of your long-term plan or a ten-second impulse?", "Vision versus distraction."},
	{"Looking for inspiration, or for more clips you will forget by tonight?", "Say what you are really going to do."},
	{"Is your focus taking a short snack break, or about to disappear for the evening?", "Short breaks have a way of growing."},
	{"How proud will you feel about this in an hour?", "Future you will either thank you or sigh."},
	{"Is your weekly screen-time report about to look worse, or is this important?", "The numbers will not lie."},
	{"Is this the productive break you promised yourself, or procrastination in disguise?", "You know how this usually ends."},
	{"Are you immune to the endless feed today, or walking straight into it?", "The feed is already waiting for you."},
	{"Are you opening this to learn something, or to forget something?", "Knowledge or escape. Pick deliberately."},
	{"Is your brain asking for a reward, or are your fingers just moving on their own?", "Habits move faster than thoughts."},
}
